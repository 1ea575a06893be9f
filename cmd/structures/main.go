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

	"cbmtools/internal/platform/structfiles"
	"cbmtools/internal/platform/uniprot"
	"cbmtools/internal/structures"
	"cbmtools/internal/table"
)

type options struct {
	Input     string  `validate:"required"`
	Output    string  `validate:"required"`
	IDColumn  string  `validate:"required"`
	Download  bool
	BaseDir   string  `validate:"required"`
	UserAgent string  `validate:"required"`
	RPS       float64 `validate:"gt=0"`
}

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	var opts options
	flag.StringVar(&opts.Input, "in", "enriched_cbm_data.csv", "Input CSV with UniProt accessions")
	flag.StringVar(&opts.Output, "out", "cbm_structure_availability.csv", "Output CSV for structure availability")
	flag.StringVar(&opts.IDColumn, "id-column", "UniProt_Accession", "Column holding the UniProt accession")
	flag.BoolVar(&opts.Download, "download", false, "Download available PDB/AlphaFoldDB model files")
	flag.StringVar(&opts.BaseDir, "dir", "CBM Structures", "Base directory for downloaded model files")
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
	uniprotClient := uniprot.NewClient(opts.UserAgent, limiter)
	fileClient := structfiles.NewClient(opts.UserAgent, limiter)
	service := structures.NewService(uniprotClient, fileClient, structures.Config{
		Download: opts.Download,
		BaseDir:  opts.BaseDir,
	})

	log.Printf("checking structure availability for %d proteins from %s", len(tbl.Rows), opts.Input)
	out, sum, err := service.CheckTable(context.Background(), tbl, opts.IDColumn)
	if err != nil {
		log.Fatalf("check: %v", err)
	}

	if err := out.Save(opts.Output); err != nil {
		log.Fatalf("save %s: %v", opts.Output, err)
	}
	log.Printf("saved structure availability to %s", opts.Output)
	if opts.Download {
		log.Printf("downloaded models are under %q (PDB and AlphaFold DB subdirectories)", opts.BaseDir)
	}
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
