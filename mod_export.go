package viscos

import (
	"github.com/viscos/viscos/export"
)

// ExportModule writes the scene as glTF when the app shuts down.
type ExportModule struct {
	Path string
}

type exportTarget struct {
	path string
}

func (mod ExportModule) Install(app *App, cmd *Commands) {
	if mod.Path == "" {
		return
	}
	cmd.AddResources(&exportTarget{path: mod.Path})
	app.UseSystem(
		System(exportSystem).
			InStage(Shutdown),
	)
}

func exportSystem(cmd *Commands, target *exportTarget, gizmos *Gizmos) {
	if err := export.Save(gizmos.Root, target.path); err != nil {
		cmd.Logger().Errorf("export: %v", err)
		return
	}
	cmd.Logger().Infof("scene exported to %s", target.path)
}
