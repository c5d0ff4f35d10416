// Package acl is the anti-corruption layer between the analysis pipeline and
// the hosted language-model APIs.
//
// Each provider speaks its own wire format. The completers in this package
// build the vendor request, send it through the resilient [clients.Client]
// and reduce the vendor response to plain text. Nothing vendor-specific
// leaks past [Provider], which implements [ports.AIProvider] on top of a
// completer and the shared prompts.
//
// # Package Components
//
//   - [ProviderRegistry]: builds a [Provider] per request from a
//     [domain.ProviderConfig] and reports provider reachability for /-/ready
//   - [Provider]: summary, tag and category generation over one completer.
//     Tag replies are returned raw; the app layer parses them
//   - [MapHTTPError]: HTTP status code to domain error mapping
//
// # Error Handling Strategy
//
// OpenAI and Gemini both wrap failures in an "error" object but disagree on
// the fields; [ParseProviderError] reads either. [MapHTTPError] then maps:
//   - 401/403 → [domain.ErrForbidden] (the user's key was rejected)
//   - 404 → [domain.ErrNotFound] (unknown model)
//   - 400/413/422 → [domain.ErrValidation]
//   - 429 → [domain.ErrUnavailable], or [domain.ErrForbidden] when the
//     quota is exhausted
//   - 5xx, network errors and an open circuit → [domain.ErrUnavailable]
//
// A missing API key or an unknown provider kind is a
// [domain.ConfigurationError]. The dispatcher treats that as "analysis not
// configured" and returns its default result instead of failing the request.
package acl
