package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"nyaya-backend/legaldata"
	"nyaya-backend/storage"

	"github.com/joho/godotenv"
)

// Validates local dataset files and uploads them through the configured
// storage backend. Pointing STORAGE_TYPE at s3 publishes a local db/
// directory to the bucket the server reads from.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables")
	}

	srcDir := "./db"
	if len(os.Args) > 1 {
		srcDir = os.Args[1]
	}

	store, err := storage.NewStorageFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	ctx := context.Background()
	uploaded := 0

	for _, file := range datasetFiles() {
		path := filepath.Join(srcDir, file.name)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Skipping %s: %v", file.name, err)
			continue
		}

		if err := json.Unmarshal(data, file.target); err != nil {
			log.Fatalf("Invalid dataset file %s: %v", file.name, err)
		}

		if err := store.Upload(ctx, file.name, bytes.NewReader(data)); err != nil {
			log.Fatalf("Failed to upload %s: %v", file.name, err)
		}
		log.Printf("✓ Uploaded %s (%d bytes)", file.name, len(data))
		uploaded++
	}

	if uploaded == 0 {
		log.Fatalf("No dataset files found under %s", srcDir)
	}

	fmt.Printf("\n✅ Imported %d dataset files\n", uploaded)
}

type datasetFile struct {
	name   string
	target interface{}
}

func datasetFiles() []datasetFile {
	return []datasetFile{
		{legaldata.FileIndianDomainMap, &legaldata.DomainMap{}},
		{legaldata.FileUAEDomainMap, &legaldata.DomainMap{}},
		{legaldata.FileUKDomainMap, &legaldata.DomainMap{}},
		{legaldata.FileIndianLawDataset, &legaldata.IndianDataset{}},
		{legaldata.FileUAELawDataset, &legaldata.UAEDataset{}},
		{legaldata.FileUKLawDataset, &legaldata.UKDataset{}},
		{legaldata.FileIndianProcedures, &legaldata.ProcedureFile{}},
		{legaldata.FileUAEProcedures, &legaldata.ProcedureFile{}},
		{legaldata.FileUKProcedures, &legaldata.ProcedureFile{}},
	}
}
