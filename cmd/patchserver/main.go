// Command patchserver runs the HTTP front end for applying patches to an
// inline JSON file snapshot, with applied-patch history persisted to a
// local bbolt file.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/codalotl/codalotl/internal/patchserver"
)

type opts struct {
	listenAddr string
	dbFile     string
}

func defaultEnv(s, def string) string {
	if v, ok := os.LookupEnv(s); ok {
		return v
	}
	return def
}

func stringVar(p *string, fg, defaultValue, usage string) {
	ev := strings.ReplaceAll(strings.ToUpper(fg), "-", "_")
	flag.StringVar(p, fg, defaultEnv(ev, defaultValue), usage+". env var: "+ev)
}

func main() {
	var o opts
	stringVar(&o.listenAddr, "listen-addr", ":8844", "listen address for the web server")
	stringVar(&o.dbFile, "db-file", "patchserver.bolt", "file used for the applied-patch history database")
	flag.Parse()

	db, err := bbolt.Open(o.dbFile, 0o600, nil)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	srv := &patchserver.Server{DB: &patchserver.DB{DB: db}}

	fmt.Println("listening on", o.listenAddr)
	log.Fatal(http.ListenAndServe(o.listenAddr, srv.Router()))
}
