// Package domain contains the core business entities of the adoption platform
// (accounts, animals, adoption applications, volunteers, contact messages,
// subscriptions and shelter settings) together with their validation rules and
// lifecycle states. It is independent of storage and transport.
package domain
