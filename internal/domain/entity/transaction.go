package entity

import "time"

// Transaction representa um pedido lido de sample_transactions.csv.
type Transaction struct {
	OrderID         string    `json:"order_id"`
	CustomerID      string    `json:"customer_id"`
	OrderDate       time.Time `json:"order_date"`
	OrderAmount     float64   `json:"order_amount"`
	ProductCategory string    `json:"product_category"`
}

// TransactionColumns is the header of the transactions CSV.
var TransactionColumns = []string{"order_id", "customer_id", "order_date", "order_amount", "product_category"}

// SalesRecord representa uma linha de sales_history.csv.
type SalesRecord struct {
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	SalesAmount float64   `json:"sales_amount"`
	UnitsSold   int       `json:"units_sold"`
}

// SalesColumns is the header of the sales history CSV.
var SalesColumns = []string{"date", "category", "sales_amount", "units_sold"}

// Categories são as categorias de produto usadas pelos geradores.
var Categories = []string{"Electronics", "Clothing", "Books", "Food", "Sports"}
