package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/xrisent/flask-back/handlers"
	"github.com/xrisent/flask-back/store"
)

func main() {
	// Optional .env for local development.
	godotenv.Load()

	driver, dsn := databaseConfig()

	st, err := store.Open(driver, dsn)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer st.Close()

	if err := st.InitSchema(); err != nil {
		logrus.WithError(err).Fatal("failed to initialize schema")
	}
	logrus.WithField("driver", driver).Info("connected to database")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handlers.NewRouter(st),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logrus.WithField("addr", srv.Addr).Info("server listening")
	logrus.Fatal(srv.ListenAndServe())
}

// databaseConfig reads DB settings from the environment. Defaults to a
// local SQLite file; set DB_DRIVER=mysql for a MySQL deployment.
func databaseConfig() (driver, dsn string) {
	driver = os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "sqlite3"
	}

	switch driver {
	case "mysql":
		dbUser := os.Getenv("DB_USER")
		if dbUser == "" {
			dbUser = "root"
		}
		dbPass := os.Getenv("DB_PASS")
		dbHost := os.Getenv("DB_HOST")
		if dbHost == "" {
			dbHost = "localhost"
		}
		dbPort := os.Getenv("DB_PORT")
		if dbPort == "" {
			dbPort = "3306"
		}
		dbName := os.Getenv("DB_NAME")
		if dbName == "" {
			dbName = "library"
		}
		dsn = dbUser + ":" + dbPass + "@tcp(" + dbHost + ":" + dbPort + ")/" + dbName + "?parseTime=true"
	default:
		dsn = os.Getenv("DB_PATH")
		if dsn == "" {
			dsn = "library.db"
		}
	}
	return driver, dsn
}
