package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/df07/go-sequential-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Create and start web server
	webServer := server.NewServer(*port)

	logrus.Info("Sequential Raytracer Web Server")
	logrus.Infof("Visit http://localhost:%d to start tracing", *port)

	if err := webServer.Start(); err != nil {
		logrus.Errorf("Error starting server: %v", err)
		os.Exit(1)
	}
}
