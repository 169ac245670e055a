// Package config defines configuration structures for the keggx CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (KEGGX_ prefix)
//   - YAML configuration file
//
// Defaults target the KEGG REST API: the human pathway listing and the
// per-pathway KGML endpoint. All of it is overridable, so the same tool
// syncs any catalog that follows the listing/template shape.
//
// # Structure
//
//	type Config struct {
//	    ListingURL  string
//	    Template    string
//	    StripPrefix int
//	    Output      string
//	    Extension   string
//	    Workers     int
//	    Timeout     time.Duration
//	    Filter      string
//	    Progress    bool
//	    Manifest    bool
//	}
package config
