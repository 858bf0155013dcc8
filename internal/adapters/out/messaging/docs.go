// Package messaging groups the outbound channel publishers that implement
// ports.Messenger.
//
//   - rabbitmq: persistent JSON publications with publisher confirms
//   - logsink: writes notifications to the structured log only
//   - ratelimit: throttles any Messenger to a fixed rate
//
// No publisher talks to an SMS or email provider directly; downstream
// consumers of the broker do.
package messaging
