// Package config provides configuration loading and validation for the
// decision table service.
//
// Configuration is loaded from a YAML file, defaults are applied for
// unset fields, and the result is validated before use. Environment
// variables of the form DTABLE_SECTION_FIELD override file values.
package config
