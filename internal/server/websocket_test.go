// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWSHub_BroadcastJob(t *testing.T) {
	hub := NewWSHub()
	go hub.Run()

	client := &WSClient{send: make(chan []byte, 4), hub: hub}
	hub.register <- client

	hub.BroadcastJob(&Job{ID: "abc", Status: JobStatusRunning})

	select {
	case raw := <-client.send:
		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if msg.Type != "job_update" {
			t.Errorf("Expected job_update, got %s", msg.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("No broadcast received")
	}

	hub.unregister <- client
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("Expected send channel to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Send channel never closed")
	}
}

func TestWSHub_DropsWhenCongested(t *testing.T) {
	hub := NewWSHub()
	go hub.Run()

	// Zero-capacity client: every broadcast must be dropped, not block.
	client := &WSClient{send: make(chan []byte), hub: hub}
	hub.register <- client

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.BroadcastJob(&Job{ID: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked on a slow client")
	}
}
