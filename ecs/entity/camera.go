package entity

import (
	"fmt"

	"github.com/milk9111/hexnav/ecs"
	"github.com/milk9111/hexnav/ecs/component"
)

// NewCamera adds a camera that follows target.
func NewCamera(w *ecs.World, target ecs.Entity, zoom, smoothness float64) (ecs.Entity, error) {
	if zoom <= 0 {
		zoom = 1
	}
	if smoothness == 0 {
		smoothness = 4
	}
	var x, y float64
	if t, ok := ecs.Get(w, target, component.TransformComponent.Kind()); ok {
		x, y = t.X, t.Y
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		X:          x,
		Y:          y,
		Zoom:       zoom,
		Smoothness: smoothness,
		Target:     uint64(target),
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}

// NewPointer adds the pointer singleton.
func NewPointer(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PointerComponent.Kind(), &component.Pointer{}); err != nil {
		return 0, fmt.Errorf("pointer: add pointer component: %w", err)
	}
	return e, nil
}
