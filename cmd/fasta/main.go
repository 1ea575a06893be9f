package main

import (
	"flag"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"cbmtools/internal/fastagen"
	"cbmtools/internal/table"
)

type options struct {
	Input          string `validate:"required"`
	Output         string `validate:"required"`
	IDColumn       string `validate:"required"`
	FamilyColumn   string `validate:"required"`
	SequenceColumn string `validate:"required"`
}

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	var opts options
	flag.StringVar(&opts.Input, "in", "enriched_cbm_data.csv", "Input CSV with enriched CBM records")
	flag.StringVar(&opts.Output, "out", "cbm_domains_for_alphafold.fasta", "Output FASTA file")
	flag.StringVar(&opts.IDColumn, "id-column", "UniProt_Accession", "Column holding the protein identifier")
	flag.StringVar(&opts.FamilyColumn, "family-column", "CBM_Family", "Column holding the CBM family")
	flag.StringVar(&opts.SequenceColumn, "sequence-column", "Amino_Acid_Sequence", "Column holding the amino-acid sequence")
	flag.Parse()

	if err := validator.New().Struct(opts); err != nil {
		log.Fatalf("invalid options: %v", err)
	}

	tbl, err := table.Load(opts.Input)
	if err != nil {
		log.Fatalf("load %s: %v", opts.Input, err)
	}

	log.Printf("generating FASTA entries for %d proteins from %s", len(tbl.Rows), opts.Input)
	text, sum, err := fastagen.Generate(tbl, fastagen.Options{
		IDColumn:       opts.IDColumn,
		FamilyColumn:   opts.FamilyColumn,
		SequenceColumn: opts.SequenceColumn,
	})
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	if err := os.WriteFile(opts.Output, []byte(text), 0o644); err != nil {
		log.Fatalf("save %s: %v", opts.Output, err)
	}
	log.Printf("wrote %d FASTA entries to %s (%d skipped)", sum.Succeeded, opts.Output, sum.Skipped)
	log.Println(sum)
}
