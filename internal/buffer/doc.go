// Package buffer implements the per-meeting transcript buffering engine.
//
// Each meeting owns two views of the same entries: a time-windowed recent
// view used for low-latency task and summary triggers, and an append-only
// full history used for final summarization. Buffers are isolated per
// meeting so concurrent ingestion into unrelated meetings never contends
// on a shared lock.
package buffer
