package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads a task collection from a JSON or YAML file. The format is
// chosen by extension; anything that is not .json is parsed as YAML
// (YAML is a superset of JSON, so .json is just the strict fast path).
func Load(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(data)
	default:
		return DecodeYAML(data)
	}
}

// DecodeJSON parses the reference input shape: a JSON array of task
// objects.
func DecodeJSON(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse tasks JSON: %w", err)
	}
	return tasks, nil
}

// DecodeYAML parses either a bare list of tasks or a document with a
// top-level `tasks:` key.
func DecodeYAML(data []byte) ([]Task, error) {
	var tasks []Task
	if err := yamlv3.Unmarshal(data, &tasks); err == nil {
		return tasks, nil
	}

	var doc struct {
		Tasks []Task `yaml:"tasks"`
	}
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse tasks YAML: %w", err)
	}
	return doc.Tasks, nil
}
