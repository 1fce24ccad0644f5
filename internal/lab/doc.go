// Package lab keeps a shared agent registry in step with this board's
// agent profiles.
//
// The registry is a JSON file owned by the lab; this package only touches
// the house entry named in the lab config and the generatedAt stamp, and
// preserves every other key it finds. Notify sends a best-effort REST
// notification to the lab API.
package lab
