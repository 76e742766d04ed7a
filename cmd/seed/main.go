package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Iwamergun/dentalmarket-backend/config"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/db"
	"github.com/Iwamergun/dentalmarket-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Beklenen sütunlar: SKU | Ürün Adı | Kategori | Marka | Fiyat | Stok | Açıklama
const minColumns = 6

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := db.GetDB().CreateInBatches(products, batchSize).Error; err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	categoryIDs, err := loadCategoryIDs()
	if err != nil {
		return nil, err
	}
	brandIDs := make(map[string]uint)

	var products []model.Product
	seenSKUs := make(map[string]bool) // SKU tekrarlarını ele
	slugCounter := make(map[string]int)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			// başlık satırı
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < minColumns {
			skippedCount++
			continue
		}

		sku := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		categoryName := strings.TrimSpace(row[2])
		brandName := strings.TrimSpace(row[3])
		priceStr := strings.TrimSpace(row[4])
		stockStr := strings.TrimSpace(row[5])
		description := ""
		if len(row) > 6 {
			description = strings.TrimSpace(row[6])
		}

		if sku == "" || name == "" || categoryName == "" || priceStr == "" {
			skippedCount++
			continue
		}

		if seenSKUs[sku] {
			skippedCount++
			continue
		}
		seenSKUs[sku] = true

		price, err := strconv.ParseFloat(strings.ReplaceAll(priceStr, ",", "."), 64)
		if err != nil || price <= 0 {
			skippedCount++
			continue
		}

		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			stock = 0
		}

		categoryID, ok := categoryIDs[util.Slugify(categoryName)]
		if !ok {
			// bilinmeyen kategori: oluştur
			category := model.Category{
				Name:     categoryName,
				Slug:     util.Slugify(categoryName),
				IsActive: true,
			}
			if err := db.GetDB().Create(&category).Error; err != nil {
				return nil, fmt.Errorf("failed to create category %q: %w", categoryName, err)
			}
			categoryIDs[category.Slug] = category.ID
			categoryID = category.ID
		}

		var brandID *uint
		if brandName != "" {
			id, ok := brandIDs[brandName]
			if !ok {
				brand := model.Brand{
					Name:     brandName,
					Slug:     util.Slugify(brandName),
					IsActive: true,
				}
				// aynı marka daha önce kaydedilmişse mevcut kaydı kullan
				if err := db.GetDB().Where("slug = ?", brand.Slug).FirstOrCreate(&brand).Error; err != nil {
					return nil, fmt.Errorf("failed to create brand %q: %w", brandName, err)
				}
				brandIDs[brandName] = brand.ID
				id = brand.ID
			}
			brandID = &id
		}

		slug := util.Slugify(name)
		slugCounter[slug]++
		if slugCounter[slug] > 1 {
			slug = fmt.Sprintf("%s-%d", slug, slugCounter[slug])
		}

		products = append(products, model.Product{
			Name:          name,
			Slug:          slug,
			Description:   description,
			SKU:           sku,
			Price:         price,
			StockQuantity: stock,
			CategoryID:    categoryID,
			BrandID:       brandID,
			IsActive:      true,
		})
	}

	fmt.Printf("Skipped rows: %d\n", skippedCount)
	return products, nil
}

func loadCategoryIDs() (map[string]uint, error) {
	var categories []model.Category
	if err := db.GetDB().Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	ids := make(map[string]uint, len(categories))
	for _, c := range categories {
		ids[c.Slug] = c.ID
	}
	return ids, nil
}
