// Package seed inserts demo catalog and shipping data. Every insert is
// keyed on a stable natural key with ON CONFLICT DO NOTHING, so running
// the seeder twice leaves the database unchanged.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type product struct {
	name         string
	sku          string
	description  string
	price        float64
	salePrice    *float64
	customizable bool
	images       string
	category     string
}

func price(v float64) *float64 { return &v }

var products = []product{
	{
		name: "Oslo Oak Dining Table", sku: "TAB-OSLO-01",
		description: "Six-seater solid oak dining table with a matte finish.",
		price:       5200, customizable: true,
		images:   `["oslo-table-1.jpg","oslo-table-2.jpg"]`,
		category: "tables",
	},
	{
		name: "Nile Linen Sofa", sku: "SOF-NILE-03",
		description: "Three-seater sofa upholstered in Egyptian linen.",
		price:       8900, salePrice: price(7450),
		images:   `["nile-sofa-1.jpg"]`,
		category: "sofas",
	},
	{
		name: "Aswan Walnut Bookshelf", sku: "SHF-ASWN-02",
		description: "Five-shelf walnut bookcase with adjustable shelves.",
		price:       3100, customizable: true,
		images:   `["aswan-shelf-1.jpg"]`,
		category: "storage",
	},
	{
		name: "Giza Accent Chair", sku: "CHR-GIZA-05",
		description: "Mid-century accent chair with brass legs.",
		price:       1850, salePrice: price(1480.5),
		images:   `["giza-chair-1.jpg","giza-chair-2.jpg"]`,
		category: "chairs",
	},
	{
		name: "Luxor Bedside Table", sku: "TAB-LUXR-04",
		description: "Compact bedside table with a soft-close drawer.",
		price:       920, customizable: true,
		images:   `["luxor-bedside-1.jpg"]`,
		category: "tables",
	},
	{
		name: "Delta Velvet Ottoman", sku: "OTT-DLTA-01",
		description: "Round velvet ottoman with hidden storage.",
		price:       640,
		images:   `["delta-ottoman-1.jpg"]`,
		category: "seating",
	},
}

// Apply seeds products, a default shipping rule and an admin account.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger logrus.FieldLogger) error {
	const insertProduct = `
INSERT INTO products (name, sku, description, price, sale_price, customizable, images, category)
VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8)
ON CONFLICT (sku) DO NOTHING`

	for _, p := range products {
		if _, err := pool.Exec(ctx, insertProduct,
			p.name, p.sku, p.description, p.price, p.salePrice, p.customizable, p.images, p.category,
		); err != nil {
			return fmt.Errorf("seed product %s: %w", p.sku, err)
		}
	}

	const insertRule = `
INSERT INTO shipping_rules (name, price, free_over, is_active)
SELECT 'Standard delivery', 150, 2000, TRUE
WHERE NOT EXISTS (SELECT 1 FROM shipping_rules WHERE name = 'Standard delivery')`
	if _, err := pool.Exec(ctx, insertRule); err != nil {
		return fmt.Errorf("seed shipping rule: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-change-me"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	const insertAdmin = `
INSERT INTO users (name, email, password_hash, role)
SELECT 'Admin', 'admin@rofida.example', $1, 'admin'
WHERE NOT EXISTS (SELECT 1 FROM users WHERE lower(email) = 'admin@rofida.example')`
	if _, err := pool.Exec(ctx, insertAdmin, string(hashed)); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	logger.WithField("products", len(products)).Info("seed applied")
	return nil
}
