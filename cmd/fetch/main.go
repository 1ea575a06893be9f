package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"cbmtools/internal/platform/uniprot"
	"cbmtools/internal/resolve"
	"cbmtools/internal/table"
)

type options struct {
	Input     string  `validate:"required"`
	Output    string  `validate:"required"`
	IDColumn  string  `validate:"required"`
	UserAgent string  `validate:"required"`
	RPS       float64 `validate:"gt=0"`
}

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	var opts options
	flag.StringVar(&opts.Input, "in", "my_cbm_data.csv", "Input CSV with identifiers to resolve")
	flag.StringVar(&opts.Output, "out", "enriched_cbm_data.csv", "Output CSV for enriched records")
	flag.StringVar(&opts.IDColumn, "id-column", "Header", "Column holding the identifier to search for")
	flag.Parse()

	opts.UserAgent = getEnv("CBM_USER_AGENT", "cbmtools/1.0")
	opts.RPS = getEnvFloat("CBM_RPS", 10)

	if err := validator.New().Struct(opts); err != nil {
		log.Fatalf("invalid options: %v", err)
	}

	tbl, err := table.Load(opts.Input)
	if err != nil {
		log.Fatalf("load %s: %v", opts.Input, err)
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RPS), 1)
	client := uniprot.NewClient(opts.UserAgent, limiter)
	service := resolve.NewService(client)

	log.Printf("processing %d proteins from %s", len(tbl.Rows), opts.Input)
	out, sum, err := service.EnrichTable(context.Background(), tbl, opts.IDColumn)
	if err != nil {
		log.Fatalf("enrich: %v", err)
	}

	if err := out.Save(opts.Output); err != nil {
		log.Fatalf("save %s: %v", opts.Output, err)
	}
	log.Printf("saved enriched data to %s", opts.Output)
	log.Println(sum)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return f
}
