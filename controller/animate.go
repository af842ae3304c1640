package controller

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// viewportAnim holds an in-flight tween of the viewport's left/right edges,
// a split-per-axis tween pair generalized from (X,Y) to (Left,Right).
type viewportAnim struct {
	tweenLeft  *gween.Tween
	tweenRight *gween.Tween
}

// Animator drives smooth viewport transitions on top of a Controller: a UI
// calls AnimateTo once per user gesture (a double-click to zoom-to-fit, a
// keyboard jump-to-marker) and then Update(dt) once per displayed frame
// until it returns false, instead of snapping the viewport directly.
type Animator struct {
	ctrl *Controller
	anim *viewportAnim
}

// NewAnimator wraps ctrl with viewport-tween support.
func NewAnimator(ctrl *Controller) *Animator {
	return &Animator{ctrl: ctrl}
}

// AnimateTo starts a tween from the session's current viewport to
// [left, right] over duration seconds using easeFn, replacing any animation
// already in flight.
func (a *Animator) AnimateTo(left, right float64, duration float32, easeFn ease.TweenFunc) {
	vp := a.ctrl.Session.Viewport
	a.anim = &viewportAnim{
		tweenLeft:  gween.New(float32(vp.Left), float32(left), duration, easeFn),
		tweenRight: gween.New(float32(vp.Right), float32(right), duration, easeFn),
	}
}

// Animating reports whether a tween is currently in flight.
func (a *Animator) Animating() bool {
	return a.anim != nil
}

// Update advances the in-flight tween by dt seconds, applying the
// intermediate viewport through the controller (so ViewportChanged still
// fires every frame) and returns true while the animation is still running.
func (a *Animator) Update(dt float32) bool {
	if a.anim == nil {
		return false
	}
	left, doneLeft := a.anim.tweenLeft.Update(dt)
	right, doneRight := a.anim.tweenRight.Update(dt)

	old := a.ctrl.Session.Viewport
	a.ctrl.Session.Viewport.Left = float64(left)
	a.ctrl.Session.Viewport.Right = float64(right)
	a.ctrl.publishViewportChange(old)

	if doneLeft && doneRight {
		a.anim = nil
		return false
	}
	return true
}

// Stop cancels any in-flight animation without changing the viewport.
func (a *Animator) Stop() {
	a.anim = nil
}
