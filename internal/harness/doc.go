// Package harness runs import scenarios described in YAML and checks their
// result logs and final store state.
//
// # Scenario Format
//
//	name: theme_light_dark
//	description: "What this scenario validates"
//	libraries: true          # optional, default true
//	mode_limit: 0            # optional, 0 = unlimited
//	library:                 # optional team library published before the import
//	  name: Core
//	  files:
//	    - name: core.json
//	      text: '{"color": {"blue": {"$type": "color", "$value": "#0000FF"}}}'
//	files:
//	  - name: global.json
//	    text: '{"color": {"brand": {"$type": "color", "$value": "#0D99FF"}}}'
//	assertions:
//	  - type: log_contains
//	    result: info
//	    text: "1 variables were created and 0 other updates were made."
//	  - type: log_count
//	    result: error
//	    count: 0
//	  - type: collection
//	    collection: Theme
//	    modes: [Light, Dark]
//	  - type: variable
//	    collection: Theme
//	    variable: color/brand
//	    kind: COLOR
//	    values: {Light: "#0d99ff"}
//	  - type: variable_absent
//	    variable: color/missing
//
// Files are given in order; the order is the order the importer sees them.
//
// # Determinism
//
// Every run uses a fresh in-memory store with sequential IDs, so result logs
// and state snapshots are identical across runs and can be compared against
// golden files (see RunWithGolden).
package harness
