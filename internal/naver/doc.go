// Package naver implements the Naver Book Search API client.
//
// The client is rate limited on the caller side because the open API tier
// enforces a per-second quota; every consumer in the process shares one
// client so the limiter covers cover resolution and live search together.
package naver
