package script

// Funcs describes a behavior assembled from function fields. Interpreted
// module systems build one per factory call. Nil fields are skipped.
type Funcs struct {
	Name    string
	Buttons ButtonMap

	Start  func(s *Script) error
	Update func(s *Script, dt float64)
	Event  func(s *Script, name string)
	Render func(s *Script, ui UI)
	Stop   func(s *Script)

	// Destroy runs when the loader discards the behavior.
	Destroy func()
}

// FuncBehavior is a Behavior backed by Funcs.
type FuncBehavior struct {
	*Script
	f Funcs
}

// NewFuncBehavior creates a behavior from f. The button table, if any, is
// registered immediately.
func NewFuncBehavior(host *Host, f Funcs) *FuncBehavior {
	b := &FuncBehavior{f: f}
	b.Script = New(f.Name, host, b)
	if f.Buttons != nil {
		b.RegisterButtons(f.Buttons)
	}
	return b
}

// OnStart implements Starter.
func (b *FuncBehavior) OnStart() error {
	if b.f.Start == nil {
		return nil
	}
	return b.f.Start(b.Script)
}

// OnStop implements Stopper.
func (b *FuncBehavior) OnStop() {
	if b.f.Stop != nil {
		b.f.Stop(b.Script)
	}
}

// OnUpdate implements Updater.
func (b *FuncBehavior) OnUpdate(dt float64) {
	if b.f.Update != nil {
		b.f.Update(b.Script, dt)
	}
}

// OnEvent implements EventHandler.
func (b *FuncBehavior) OnEvent(name string) {
	if b.f.Event != nil {
		b.f.Event(b.Script, name)
	}
}

// RenderUI implements UIRenderer.
func (b *FuncBehavior) RenderUI(ui UI) {
	if b.f.Render != nil {
		b.f.Render(b.Script, ui)
	}
}

// Destroy implements Destroyer.
func (b *FuncBehavior) Destroy() {
	if b.f.Destroy != nil {
		b.f.Destroy()
	}
}
