// Package docs publishes the OpenAPI document to the swagger UI served under
// /swagger/*.
package docs

import (
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

type document struct {
	raw string
}

func (d document) ReadDoc() string {
	return d.raw
}

var once sync.Once

// Register makes doc the document behind /swagger/doc.json. Only the first
// call has an effect; swag panics on duplicate registration.
func Register(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}
	once.Do(func() {
		swag.Register(swag.Name, document{raw: string(raw)})
	})
	return nil
}
