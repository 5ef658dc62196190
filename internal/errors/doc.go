// Package errors provides typed error handling for stms-mcp operations.
//
// Every error carries a stable code that MCP tool results and CLI exit
// codes are derived from.
//
// Example usage:
//
//	// Creating errors
//	err := errors.InvalidParams("idp_user_code is required")
//	err := errors.UnsupportedMethod("PATCH")
//
//	// Wrapping errors
//	err := errors.RequestFailed("GET", "/user/whoami", netErr)
//
//	// Checking error codes
//	if errors.Is(err, errors.CodeRequestFailed) {
//	    // handle transport failure
//	}
//
//	// Extracting codes
//	code := errors.Code(err)
//	if code == errors.CodeConfigInvalid {
//	    // handle bad configuration
//	}
//
//	// Stdlib compatibility
//	var stmsErr *errors.Error
//	if errors.As(err, &stmsErr) {
//	    fmt.Println(stmsErr.Code, stmsErr.Message)
//	}
package errors
