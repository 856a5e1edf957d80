// Package request builds outbound HTTP requests from a shared factory.
//
// A Factory owns one httpclient.Client and an ordered list of adapters.
// Every request it creates is bound to that client and to a copy of the
// adapters registered so far; adapters registered later only reach later
// requests.
//
//	f := request.NewFactory()
//	f.AddAdapter(adapters.RequestID())
//	f.AddAdapter(adapters.PropagateTrace())
//
//	resp, err := f.Get(request.URI("https://api.example.com/orders/42")).
//	    SetHeader("Accept", "application/json").
//	    Send(ctx)
//
// An adapter vetoes a request by returning an error. Send then returns an
// *AbortError without contacting the server:
//
//	if request.IsAborted(err) { ... }
//
// Factories can also be assembled from configuration. Adapter types are
// looked up in DefaultRegistry, which the adapters package populates:
//
//	import _ "github.com/kbukum/middlewarekit/request/adapters"
//
//	f, err := request.NewFactoryFromConfig(cfg)
package request
