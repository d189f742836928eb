// Package feed keeps the Recent Activity record set current.
//
// A load cycle fetches the projects CSV from a Source, decodes it to UTF-8,
// runs it through the projects tokenizer and mapper and reports the result as
// an Outcome: Loaded with the records, or Failed with the reason. The Store
// starts out holding the bundled dataset and only replaces it on Loaded, so
// readers always see a complete, usable record set.
//
// The Service owns the cycle. It allows one cycle in flight at a time, tags
// each cycle with a load ID for log correlation, drops results whose context
// was cancelled before they could be applied, and records Prometheus metrics.
// StartScheduler runs the cycle at startup and optionally on an interval.
//
// # Error Codes
//
// MapError turns load failures into user messages with codes:
//
//	SRC001   - Remote source answered with a non-2xx status
//	SRC002   - Source file or URL path does not exist
//	SRC003   - Source host refused or dropped the connection
//	SRC004   - Fetch timed out
//	SRC005   - Document exceeds the configured size limit
//	SRC006   - Unsupported source location
//	PARSE001 - Document contained no usable records
//	PARSE002 - Unsupported character set
//	LOAD001  - A load is already running
//	LOAD002  - Load was cancelled and its result discarded
//	ERR000   - Anything else; check the logs for the load ID
package feed
