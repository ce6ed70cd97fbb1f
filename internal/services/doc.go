// Package services holds the external collaborators the voting tool talks
// to: the oEmbed proxy that prefills song metadata and the LLM assistant
// that suggests a setlist order. Neither is authoritative over core
// state; both degrade to harmless defaults when unreachable.
package services
