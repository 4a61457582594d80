// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Seeder fills a catalog with fixture listings for local development,
// so search and explanation can be exercised without running a scrape.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/aracbul/aracbul"
	"github.com/aracbul/aracbul/core"
	"github.com/aracbul/aracbul/ingestion"
)

var listings = []*core.Listing{
	{Title: "Renault Clio 1.0 TCe Joy", Brand: "Renault", City: "İstanbul", Fuel: "Benzin", Transmission: "Otomatik", Year: 2021, Price: 785000, Distance: 64000},
	{Title: "Renault Megane 1.3 TCe Icon", Brand: "Renault", City: "Ankara", Fuel: "Benzin", Transmission: "Otomatik", Year: 2020, Price: 1120000, Distance: 88000},
	{Title: "Renault Symbol 1.5 dCi Joy", Brand: "Renault", City: "Konya", Fuel: "Dizel", Transmission: "Manuel", Year: 2016, Price: 520000, Distance: 176000},
	{Title: "Toyota Corolla 1.8 Hybrid Dream", Brand: "Toyota", City: "İstanbul", Fuel: "Hibrit", Transmission: "CVT", Year: 2022, Price: 1450000, Distance: 31000},
	{Title: "Toyota Yaris 1.5 Flame", Brand: "Toyota", City: "İzmir", Fuel: "Benzin", Transmission: "Otomatik", Year: 2021, Price: 980000, Distance: 45000},
	{Title: "Volkswagen Passat 1.6 TDI BlueMotion Comfortline", Brand: "Volkswagen", City: "Ankara", Fuel: "Dizel", Transmission: "DSG", Year: 2019, Price: 1380000, Distance: 121000},
	{Title: "Volkswagen Polo 1.0 TSI Comfortline", Brand: "Volkswagen", City: "Bursa", Fuel: "Benzin", Transmission: "Manuel", Year: 2020, Price: 820000, Distance: 72000},
	{Title: "Fiat Egea 1.4 Fire Easy", Brand: "Fiat", City: "İzmir", Fuel: "Benzin & LPG", Transmission: "Manuel", Year: 2019, Price: 640000, Distance: 98000},
	{Title: "Fiat Egea Cross 1.5 T4 Hybrid", Brand: "Fiat", City: "Antalya", Fuel: "Hibrit", Transmission: "DCT", Year: 2023, Price: 1250000, Distance: 18000},
	{Title: "Hyundai i20 1.4 MPI Style", Brand: "Hyundai", City: "İstanbul", Fuel: "Benzin", Transmission: "Otomatik", Year: 2018, Price: 710000, Distance: 94000},
	{Title: "Hyundai Tucson 1.6 CRDI Elite", Brand: "Hyundai", City: "Gaziantep", Fuel: "Dizel", Transmission: "Otomatik", Year: 2021, Price: 1890000, Distance: 56000},
	{Title: "Ford Focus 1.5 TDCi Titanium", Brand: "Ford", City: "Ankara", Fuel: "Dizel", Transmission: "Otomatik", Year: 2018, Price: 950000, Distance: 132000},
	{Title: "Opel Corsa 1.2 Edition", Brand: "Opel", City: "Eskişehir", Fuel: "Benzin", Transmission: "Manuel", Year: 2022, Price: 870000, Distance: 23000},
	{Title: "Peugeot 208 1.2 PureTech Active", Brand: "Peugeot", City: "İstanbul", Fuel: "Benzin", Transmission: "Otomatik", Year: 2021, Price: 890000, Distance: 41000},
	{Title: "Dacia Duster 1.5 BlueDCI Prestige", Brand: "Dacia", City: "Trabzon", Fuel: "Dizel", Transmission: "Manuel", Year: 2020, Price: 1050000, Distance: 85000},
	{Title: "Honda Civic 1.6 i-VTEC Eco Elegance", Brand: "Honda", City: "İzmir", Fuel: "Benzin & LPG", Transmission: "CVT", Year: 2017, Price: 1150000, Distance: 143000},
	{Title: "Skoda Octavia 1.0 TSI Premium", Brand: "Skoda", City: "Ankara", Fuel: "Benzin", Transmission: "DSG", Year: 2021, Price: 1320000, Distance: 38000},
	{Title: "BMW 3.20i Sport Line", Brand: "BMW", City: "İstanbul", Fuel: "Benzin", Transmission: "Otomatik", Year: 2019, Price: 1980000, Distance: 97000},
	{Title: "Tesla Model Y Long Range", Brand: "Tesla", City: "İstanbul", Fuel: "Elektrik", Transmission: "Otomatik", Year: 2023, Price: 2350000, Distance: 12000},
	{Title: "Citroen C3 1.2 PureTech Feel", Brand: "Citroen", City: "Adana", Fuel: "Benzin", Transmission: "Manuel", Year: 2020, Price: 680000, Distance: 67000},
}

var (
	dbPath       = flag.String("db", "./catalog_db", "catalog database directory")
	seedFileName = flag.String("src", "", "scraped listings JSON file to ingest instead of fixtures")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	catalog, err := aracbul.OpenCatalog(*dbPath, aracbul.WithoutAI())
	if err != nil {
		panic(err)
	}
	defer catalog.Close()

	ctx := context.Background()

	if *seedFileName != "" {
		pipeline, err := catalog.NewIngestionPipeline(ingestion.WithProgress(
			ingestion.NewProgressTracker(os.Stderr, 0, 100)))
		if err != nil {
			panic(err)
		}
		defer pipeline.Release()

		report, err := pipeline.IngestFile(ctx, *seedFileName)
		if err != nil {
			panic(err)
		}
		slog.Info("seeded from file", "source", report.Source,
			"ingested", report.Ingested, "rejected", report.Rejected)
		return
	}

	added, err := catalog.ListingRepository().AddListings(ctx, listings...)
	if err != nil {
		panic(err)
	}
	slog.Info("seeded fixture listings", "count", len(added))
}
