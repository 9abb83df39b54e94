// Package errors provides the structured error model used by lambda proxy
// handlers: named error codes, a registry resolving codes to descriptors,
// and the LambdaError type serialized into every error response body.
package errors
