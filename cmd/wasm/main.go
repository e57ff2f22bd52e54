//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/transformlab/internal/document"
	"github.com/inamate/transformlab/internal/lab"
	"github.com/inamate/transformlab/internal/pointlist"
	"github.com/inamate/transformlab/internal/present"
)

var service *lab.Service

func main() {
	service = lab.NewService(lab.DefaultOptions())

	geometryLab := js.Global().Get("Object").New()

	geometryLab.Set("transform", js.FuncOf(transform))
	geometryLab.Set("parse", js.FuncOf(parse))
	geometryLab.Set("matrix", js.FuncOf(matrix))
	geometryLab.Set("defaults", js.FuncOf(defaults))
	geometryLab.Set("render", js.FuncOf(render))
	geometryLab.Set("hitTest", js.FuncOf(hitTest))

	// Register on global scope
	js.Global().Set("geometryLab", geometryLab)

	// Signal that WASM is ready
	js.Global().Set("geometryLabWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorValue(msg string) js.Value {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

func toJSON(v any) js.Value {
	data, err := json.Marshal(v)
	if err != nil {
		return errorValue(err.Error())
	}
	return js.ValueOf(string(data))
}

func decodeSpec(args []js.Value, i int) (document.Spec, bool) {
	var spec document.Spec
	if len(args) <= i || args[i].Type() != js.TypeString {
		return spec, false
	}
	if err := json.Unmarshal([]byte(args[i].String()), &spec); err != nil {
		return spec, false
	}
	return spec, true
}

// transform(pointsText, specJSON) returns the result as a JSON string. A bad
// point list falls back to the safe shape with a warning in the result.
func transform(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorValue("missing points or transformation")
	}
	spec, ok := decodeSpec(args, 1)
	if !ok {
		return errorValue("invalid transformation JSON")
	}

	res, err := service.TransformLenient(document.TransformRequest{
		Points:         args[0].String(),
		Transformation: spec,
	})
	if err != nil {
		return errorValue(err.Error())
	}
	return toJSON(res)
}

func parse(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorValue("missing points")
	}
	shape, err := pointlist.Parse(args[0].String())
	if err != nil {
		return errorValue(err.Error())
	}
	return toJSON(shape)
}

func matrix(this js.Value, args []js.Value) interface{} {
	spec, ok := decodeSpec(args, 0)
	if !ok {
		return errorValue("invalid transformation JSON")
	}
	t, err := spec.Transformation()
	if err != nil {
		return errorValue(err.Error())
	}
	return toJSON(t.Matrix().ToSlice())
}

// render(pointsText, specJSON, size) returns the canvas draw commands as a
// JSON string.
func render(this js.Value, args []js.Value) interface{} {
	req, size, errVal, ok := sceneArgs(args)
	if !ok {
		return errVal
	}
	_, cmds, err := service.Scene(req, size)
	if err != nil {
		return errorValue(err.Error())
	}
	return toJSON(cmds)
}

// hitTest(pointsText, specJSON, size, x, y) returns the id of the vertex
// under canvas pixel (x, y), or "".
func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 5 {
		return js.ValueOf("")
	}
	req, size, _, ok := sceneArgs(args)
	if !ok {
		return js.ValueOf("")
	}
	res, err := service.TransformLenient(req)
	if err != nil {
		return js.ValueOf("")
	}
	return js.ValueOf(present.HitTest(res.Original, res.Transformed, size, args[3].Float(), args[4].Float()))
}

func sceneArgs(args []js.Value) (document.TransformRequest, int, js.Value, bool) {
	if len(args) < 2 {
		return document.TransformRequest{}, 0, errorValue("missing points or transformation"), false
	}
	spec, ok := decodeSpec(args, 1)
	if !ok {
		return document.TransformRequest{}, 0, errorValue("invalid transformation JSON"), false
	}
	size := 0
	if len(args) > 2 && args[2].Type() == js.TypeNumber {
		size = args[2].Int()
	}
	return document.TransformRequest{Points: args[0].String(), Transformation: spec}, size, js.Undefined(), true
}

func defaults(this js.Value, args []js.Value) interface{} {
	return toJSON(map[string]any{
		"points":          document.DefaultPointsText,
		"transformations": document.Defaults(),
	})
}
