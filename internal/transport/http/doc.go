// Package http implements the HTTP request handlers for the resale
// analytics API. It is a thin layer between transport and the service
// packages, keeping handlers focused solely on HTTP concerns.
//
// Handlers follow a common pattern:
//
//	1. Parse and validate query parameters into a request struct
//	2. Call the service layer with the request context
//	3. Render the result, or map the error to an RFC 7807 problem
//
// All error responses follow RFC 7807 Problem Details:
//
//	{
//	    "type": "validation_error",
//	    "title": "Invalid request data",
//	    "status": 400,
//	    "detail": "metric must be one of: price, price_per_sqft, price_per_lease_year",
//	    "instance": "/api/analytics/boxplot"
//	}
//
// Handlers are tested with httptest against a stubbed service.
package http
