// Package loader constructs decision tables from external table
// definitions.
//
// Two formats are supported:
//
// YAML (.yaml/.yml):
//
//	name: weekend-planner
//	description: What to do with a day off.
//	conditions: [weather, weekday]
//	actions: [activity]
//	rows:
//	  - when: [rainy, "*"]
//	    then: [read]
//	  - when: [sunny, "*"]
//	    then: [hike]
//	  - when: ["*", "*"]
//	    then: [rest]
//
// CSV (.csv), with a literal "->" header column separating conditions
// from actions:
//
//	weather,weekday,->,activity
//	rainy,*,,read
//	sunny,*,,hike
//	*,*,,rest
//
// In condition positions the token "*" denotes the wildcard; in action
// positions it is rejected, since action cells must hold concrete values.
// YAML scalars keep their decoded types (string, number, boolean); CSV
// values are parsed as boolean, then number, then string.
//
// Parsing failures and table construction failures are reported as
// *ParseError with file and line context where available.
package loader
