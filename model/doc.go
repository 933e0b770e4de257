// Package model defines the gateway contract between the executor and
// generative model providers. Providers normalize vendor responses into a
// Response carrying candidate Choices; each choice is either plain text (a
// final answer) or carries a tool request to dispatch. Concrete adapters
// live in the openai and anthropic subpackages; MockModel serves tests and
// examples.
package model
