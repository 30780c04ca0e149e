package iostore

import (
	_ "embed"
	"errors"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed taxon.schema.json
var taxonSchemaJSON string

var taxonSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(taxonSchemaJSON))
})

// validateRecord checks a store file against the taxon schema.
func validateRecord(data []byte) error {
	schema, err := taxonSchema()
	if err != nil {
		return err
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, len(res.Errors()))
	for i, e := range res.Errors() {
		msgs[i] = e.String()
	}
	return errors.New(strings.Join(msgs, "; "))
}
