// Package domain contains core concepts of the messaging client.
// No runtime, network, or UI logic should be added here.
package domain

// Identity is the stable identity resolved by the identity provider
// after a successful phone verification. Immutable for the account lifetime.
type Identity struct {
	ID          string
	PhoneNumber string
	PhotoURL    string
}

// Profile is the public directory entry of an identity.
// Created exactly once, at first successful login.
type Profile struct {
	ID          string
	DisplayName string
	PhoneNumber string
	AvatarURL   string
}
