// Package observe provides ready-made graph observers.
//
// Recorder captures every notification as an Event stamped with a logical
// sequence number and the token of the batch it belongs to. It backs the
// scenario harness and the CLI diff command. LogObserver writes the same
// notifications to a slog.Logger.
//
// Event ordering follows the graph: inside a batch, OnAssert and OnUnassert
// events arrive as mutations happen, then batch_end, then the inferred move and
// change events. Inferred events carry the token of the batch that produced
// them even though they arrive after batch_end.
package observe
