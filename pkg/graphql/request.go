package graphql

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cryk/graph-services/pkg/graphql/errors"
)

// Request is the resolver invocation envelope that the GraphQL transport
// posts to a service: the name of the field being resolved and the raw
// arguments supplied for it.
type Request struct {
	Field     string          `json:"field"`
	Arguments json.RawMessage `json:"arguments"`
}

// NewRequest reads and decodes a resolver envelope from the supplied reader
func NewRequest(body io.Reader) (Request, error) {
	req := Request{}

	err := json.NewDecoder(body).Decode(&req)
	if err != nil {
		return req, fmt.Errorf("unable to decode resolver request: %s", err.Error())
	}

	if req.Field == "" {
		return req, fmt.Errorf("resolver request does not name a field")
	}

	return req, nil
}

// Decode unmarshals the request arguments into the supplied value
func (r Request) Decode(into any) error {
	if len(r.Arguments) == 0 {
		return nil
	}

	err := json.Unmarshal(r.Arguments, into)
	if err != nil {
		return errors.NewValidationError(fmt.Sprintf("unable to decode arguments for field %q: %s", r.Field, err.Error()))
	}

	return nil
}
