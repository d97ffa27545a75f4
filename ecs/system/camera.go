package system

import (
	"github.com/milk9111/hexnav/common"
	"github.com/milk9111/hexnav/ecs"
	"github.com/milk9111/hexnav/ecs/component"
)

type CameraSystem struct {
	dt        float64
	camEntity ecs.Entity
}

func NewCameraSystem(dt float64) *CameraSystem {
	return &CameraSystem{dt: dt}
}

// Update eases the camera toward its target entity's position.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, ecs.Entity(cam.Target), component.TransformComponent.Kind())
	if !ok {
		return
	}

	t := common.LerpFactor(cam.Smoothness, cs.dt)
	cam.X = common.Lerp(cam.X, target.X, t)
	cam.Y = common.Lerp(cam.Y, target.Y, t)
}
