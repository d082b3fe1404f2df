package main

import "fmt"

// background runs fn on its own goroutine. run waits for these before the
// process exits; a panic is logged instead of crashing the server.
func (app *application) background(fn func()) {
	app.wg.Add(1)

	go func() {
		defer app.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				app.logger.Errorw("background task panicked", "error", fmt.Sprint(err))
			}
		}()

		fn()
	}()
}
