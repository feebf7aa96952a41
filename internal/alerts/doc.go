// Package alerts evaluates water-stability rules and delivers webhooks.
//
// Rules are simple "field op value" condition strings over the latest
// assessment ("lsi > 0.5", "ccpp > 10", "lime_dose > 300",
// "tendency == scaling"). Each rule has a severity and a cooldown; an alert
// fires at most once per cooldown per source, and resolves automatically when
// its condition clears.
//
// Webhook delivery (slack | teams | http) runs asynchronously; failures are
// logged and never affect assessment flow.
package alerts
