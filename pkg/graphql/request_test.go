package graphql

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
)

func TestNewRequestDecodesTheEnvelope(t *testing.T) {
	is := is.New(t)

	req, err := NewRequest(bytes.NewBufferString(`{"field": "cryptocurrency", "arguments": {"id": "abc"}}`))

	is.NoErr(err)
	is.Equal(req.Field, "cryptocurrency")

	args := struct {
		ID string `json:"id"`
	}{}
	is.NoErr(req.Decode(&args))
	is.Equal(args.ID, "abc")
}

func TestNewRequestRequiresAFieldName(t *testing.T) {
	is := is.New(t)

	_, err := NewRequest(bytes.NewBufferString(`{"arguments": {}}`))

	is.True(err != nil)
}

func TestDecodeToleratesAbsentArguments(t *testing.T) {
	is := is.New(t)

	req, err := NewRequest(bytes.NewBufferString(`{"field": "cryptocurrenciesInfo"}`))
	is.NoErr(err)

	args := struct{}{}
	is.NoErr(req.Decode(&args))
}
