package viscos

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"time"
)

type systemFn any

type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any

	fps       int
	maxFrames uint64
	frame     uint64
	exiting   bool
}

type Module interface {
	Install(app *App, cmd *Commands)
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// Frame is the number of frames stepped so far.
func (app *App) Frame() uint64 {
	return app.frame
}

// Step runs every per-frame stage once.
func (app *App) Step() {
	for _, stage := range app.stages {
		app.callStage(stage)
	}
	app.frame++
	if app.maxFrames > 0 && app.frame >= app.maxFrames {
		app.exiting = true
	}
}

// Run steps frames paced at the configured FPS until ctx is done, a system
// requests an exit or the frame limit is reached. Shutdown systems run once
// afterwards.
func (app *App) Run(ctx context.Context) error {
	logger := app.Logger()
	logger.Infof("running at %d fps (frame limit %d)", app.fps, app.maxFrames)

	var tick <-chan time.Time
	if app.fps > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(app.fps))
		defer ticker.Stop()
		tick = ticker.C
	}

	var err error
loop:
	for !app.exiting {
		if tick != nil {
			select {
			case <-ctx.Done():
				err = ctx.Err()
				break loop
			case <-tick:
			}
		} else if err = ctx.Err(); err != nil {
			break
		}
		app.Step()
	}

	app.callStage(Shutdown)
	logger.Infof("stopped after %d frames", app.frame)

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (app *App) exit() {
	app.exiting = true
}

func (app *App) callStage(stage Stage) {
	for _, system := range app.systems[stage.Name] {
		app.callSystem(system)
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource %s must be a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the resource stored for T, or nil.
func Resource[T any](app *App) *T {
	if r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]; ok {
		return r.(*T)
	}
	return nil
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			app.unresolved(systemValue, systemType, argType)
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			app.unresolved(systemValue, systemType, argType)
		}
	}
	systemValue.Call(args)
}

func (app *App) unresolved(systemValue reflect.Value, systemType, argType reflect.Type) {
	msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
		runtime.FuncForPC(systemValue.Pointer()).Name(),
		fmt.Sprint(systemType),
		fmt.Sprint(argType),
	)
	panic(msg)
}
