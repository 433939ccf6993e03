package viscos

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// Exit stops the frame loop after the current frame.
func (cmd *Commands) Exit() {
	cmd.app.exit()
}

func (cmd *Commands) Frame() uint64 {
	return cmd.app.frame
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
