// Package datastore fetches resale transaction records from the public
// open-data datastore API. It owns pagination, chunked month-by-month
// fetching, inter-request pacing, and bounded retry; the aggregation core
// only ever sees a complete snapshot or a single terminal error, never a
// partial result.
package datastore
