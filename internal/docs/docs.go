// Package docs embeds the OpenAPI description of the HTTP API.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIYAML []byte

var (
	jsonOnce sync.Once
	jsonDoc  []byte
	jsonErr  error
)

func YAML() []byte {
	return openAPIYAML
}

// JSON converts the embedded document once and caches the result.
func JSON() ([]byte, error) {
	jsonOnce.Do(func() {
		var doc map[string]interface{}
		if err := yaml.Unmarshal(openAPIYAML, &doc); err != nil {
			jsonErr = fmt.Errorf("parsing openapi.yaml: %w", err)
			return
		}

		jsonDoc, jsonErr = json.Marshal(doc)
	})

	return jsonDoc, jsonErr
}
