// Package adapters provides request adapters for common cross-cutting
// concerns: static headers, request ids, trace propagation, service tokens,
// body validation and method guards.
//
// Importing the package registers every adapter type in
// request.DefaultRegistry so that factories built with
// request.NewFactoryFromConfig can enable them by name:
//
//	adapters:
//	  - type: request_id
//	  - type: propagate_trace
//	  - type: header
//	    settings:
//	      name: X-Tenant
//	      value: acme
//	  - type: service_token
//	    settings:
//	      secret: ${SERVICE_TOKEN_SECRET}
//	      issuer: orders-gateway
//	      ttl: 2m
package adapters
