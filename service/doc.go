// Package service exposes prime queries to concurrent callers.
//
// Primes owns one prime.Generator, chosen by Config.Generator, and serializes
// access to it. Bounded queries (Between, Range) are capped by
// Config.MaxQuerySpan; First is capped by Config.MaxCount. Every query runs
// inside a span and is counted by observability.Metrics when configured.
package service
