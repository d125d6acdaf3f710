package app

import (
	"net/url"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/womat/debug"

	"knobd/pkg/app/config"
	"knobd/pkg/knob"
	"knobd/pkg/mqtt"
	"knobd/pkg/port"
	"knobd/pkg/raspberry"
)

// App is the main application struct.
// App is where the application is wired up.
type App struct {
	// web is the fiber web framework instance
	web *fiber.App

	// config is the application configuration
	config *config.Config

	// urlParsed contains the parsed Config.Webserver.URL parameter
	// and makes it easier to get params out of e.g.
	// url: https://0.0.0.0:7844/?minTls=1.2&bodyLimit=50MB
	urlParsed *url.URL

	// mqtt is the handler to the mqtt broker
	mqtt *mqtt.Handler

	// gpio is the handler to the gpio driver
	gpio raspberry.GPIO

	// button, phaseA and phaseB are the watched input lines of the knob
	button raspberry.Line
	phaseA raspberry.Line
	phaseB raspberry.Line

	// knob serializes the edge notifications and resolves them into knob
	// events. The pointer is published once the lines are watched, edge
	// handlers may already be firing at that point.
	knob atomic.Pointer[knob.Dispatcher]

	// state is the knob state snapshot shared with the web handlers
	state knobState

	// restart signals application restart
	restart chan struct{}
	// shutdown signals application shutdown
	shutdown chan struct{}
}

// New checks the web server URL and initializes the main app structure.
func New(config *config.Config) (*App, error) {
	u, err := url.Parse(config.Webserver.URL)
	if err != nil {
		debug.ErrorLog.Printf("Error parsing url %q: %s", config.Webserver.URL, err.Error())
		return &App{}, err
	}

	return &App{
		config:    config,
		urlParsed: u,

		web:  fiber.New(),
		mqtt: mqtt.New(),

		restart:  make(chan struct{}),
		shutdown: make(chan struct{}),
	}, err
}

// Run starts the application.
func (app *App) Run() error {
	if err := app.init(); err != nil {
		return err
	}

	go app.mqtt.Service()
	go app.runWebServer()
	go app.service()

	return nil
}

// init opens the gpio driver, watches the three knob lines, wires them to
// the dispatcher and connects the mqtt broker. Every failure here is fatal,
// without the lines the core cannot observe any input.
func (app *App) init() (err error) {
	cfg := app.config.Gpio

	if app.gpio, err = raspberry.Open(cfg.Driver, cfg.Chip, cfg.Pullup); err != nil {
		debug.ErrorLog.Printf("can't open gpio: %v", err)
		return err
	}

	if app.button, err = app.gpio.Watch(cfg.Button, app.notify(knob.Button)); err != nil {
		debug.ErrorLog.Printf("can't watch button line: %v", err)
		return err
	}
	if app.phaseA, err = app.gpio.Watch(cfg.PhaseA, app.notify(knob.PhaseA)); err != nil {
		debug.ErrorLog.Printf("can't watch phase A line: %v", err)
		return err
	}
	if app.phaseB, err = app.gpio.Watch(cfg.PhaseB, app.notify(knob.PhaseB)); err != nil {
		debug.ErrorLog.Printf("can't watch phase B line: %v", err)
		return err
	}

	d, err := knob.NewDispatcher(app.button, app.phaseA, app.phaseB, app.config.Debounce)
	if err != nil {
		debug.ErrorLog.Printf("can't start dispatcher: %v", err)
		return err
	}
	app.knob.Store(d)

	if err = app.mqtt.Connect(app.config.MQTT.Connection, MODULE); err != nil {
		debug.ErrorLog.Printf("can't open mqtt broker %v", err)
		return err
	}

	// initDefaultRoutes should always be called last because it may
	// access things which must be initialized before
	app.initDefaultRoutes()

	return nil
}

// notify returns the edge handler of a knob pin. The handler runs in the
// gpio driver's event context and only forwards the pin identity to the
// dispatcher's hand-off queue, no decode logic runs here.
func (app *App) notify(pin knob.Pin) raspberry.Handler {
	return func(evt port.Event) {
		debug.TraceLog.Printf("%v on %v line", evt.Type, pin)

		if d := app.knob.Load(); d != nil {
			d.Notify(pin)
		}
	}
}

// Restart returns the read only restart channel.
// Restart is used to be able to react on application restart. (see cmd/main.go)
func (app *App) Restart() <-chan struct{} {
	return app.restart
}

// Shutdown returns the read only shutdown channel.
// Shutdown is used to be able to react on application shutdown. (see cmd/main.go)
func (app *App) Shutdown() <-chan struct{} {
	return app.shutdown
}

func (app *App) Close() error {
	if app.mqtt != nil {
		_ = app.mqtt.Disconnect()
	}

	// release the lines before the dispatcher so that no edge handler
	// posts to a closed hand-off queue
	for _, l := range []raspberry.Line{app.button, app.phaseA, app.phaseB} {
		if l != nil {
			_ = l.Close()
		}
	}

	if d := app.knob.Load(); d != nil {
		_ = d.Close()
	}

	if app.gpio != nil {
		_ = app.gpio.Close()
	}

	return nil
}
