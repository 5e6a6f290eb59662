package handlers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pocketbase/pocketbase/core"

	"ticket-booking/utils"
)

// The API speaks camelCase while the platform stores snake_case columns.
// Translation happens in these two helpers and nowhere else; every handler
// responds through respond and binds request bodies through bindBody.

func respond(e *core.RequestEvent, statusCode int, payload any) error {
	out, err := camelizePayload(payload)
	if err != nil {
		return err
	}
	return e.JSON(statusCode, out)
}

func bindBody(e *core.RequestEvent, dst any) error {
	return decodeBody(e.Request.Body, dst)
}

// camelizePayload rewrites the payload's keys from the internal snake_case
// convention to the API's camelCase one. Non-object payloads pass through
// unchanged.
func camelizePayload(payload any) (any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return payload, nil
	}
	return utils.ToCamelKeys(m), nil
}

// decodeBody reads a camelCase request body into a snake-tagged struct.
// Bodies already in snake_case decode the same way since the key translation
// leaves lowercase keys untouched.
func decodeBody(r io.Reader, dst any) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}

	raw, err := json.Marshal(utils.ToSnakeKeys(m))
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
