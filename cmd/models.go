package cmd

import "github.com/samwightt/gqlvet/pkg/validation"

type ArgumentInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type ArgInfo struct {
	TypeName     string `json:"typeName,omitempty"`
	FieldName    string `json:"fieldName,omitempty"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	DefaultValue string `json:"defaultValue,omitempty"`
	Description  string `json:"description,omitempty"`
}

type FieldInfo struct {
	TypeName          string         `json:"typeName,omitempty"`
	Name              string         `json:"name"`
	Arguments         []ArgumentInfo `json:"arguments,omitempty"`
	Type              string         `json:"type"`
	DefaultValue      string         `json:"defaultValue,omitempty"`
	Description       string         `json:"description,omitempty"`
	IsDeprecated      bool           `json:"isDeprecated,omitempty"`
	DeprecationReason string         `json:"deprecationReason,omitempty"`
}

type TypeInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
	BuiltIn     bool   `json:"builtIn,omitempty"`
}

type ValueInfo struct {
	EnumName          string `json:"enumName,omitempty"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	IsDeprecated      bool   `json:"isDeprecated,omitempty"`
	DeprecationReason string `json:"deprecationReason,omitempty"`
}

type RuleInfo struct {
	Name                  string `json:"name"`
	Description           string `json:"description"`
	VisitsFragmentSpreads bool   `json:"visitsFragmentSpreads"`
}

// ValidationResult is the outcome of the validate command. Errors is
// never nil so that JSON output always carries an array.
type ValidationResult struct {
	Valid  bool                         `json:"valid"`
	Errors []validation.ValidationError `json:"errors"`
}
