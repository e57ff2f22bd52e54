package session

import (
	"encoding/json"

	"github.com/inamate/transformlab/internal/document"
	"github.com/inamate/transformlab/internal/present"
)

// Message is the envelope for every frame in both directions. Seq is chosen
// by the client and echoed on the matching result or error so a client
// dragging a slider can drop stale replies.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Transformations
	TypeTransformRequest = "transform.request"
	TypeTransformResult  = "transform.result"
	TypeSceneRequest     = "scene.request"
	TypeSceneResult      = "scene.result"
)

type WelcomePayload struct {
	SessionID       string          `json:"sessionId"`
	Points          string          `json:"points"`
	Transformations []document.Spec `json:"transformations"`
}

// TransformRequestPayload is document.TransformRequest; the result payload
// is document.TransformResult.
type TransformRequestPayload = document.TransformRequest

type SceneRequestPayload struct {
	document.TransformRequest
	Size int `json:"size"`
}

type SceneResultPayload struct {
	Result   *document.TransformResult `json:"result"`
	Commands []present.DrawCommand     `json:"commands"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
