/*
Copyright © 2026 the MeritOrder authors.
This file is part of MeritOrder.

MeritOrder is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

MeritOrder is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with MeritOrder.  If not, see <http://www.gnu.org/licenses/>.*/

package meritorderutil

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/gridmodel/meritorder"
)

// dispatchRow is the columnar layout of one dispatch-table row.
type dispatchRow struct {
	Run                int32   `parquet:"name=run, type=INT32"`
	PlantID            string  `parquet:"name=plant_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Territory          string  `parquet:"name=territory, type=BYTE_ARRAY, convertedtype=UTF8"`
	Fuel               string  `parquet:"name=fuel, type=BYTE_ARRAY, convertedtype=UTF8"`
	Cost               float64 `parquet:"name=cost_usd_mwh, type=DOUBLE"`
	CumulativeCapacity float64 `parquet:"name=cumulative_capacity_mw, type=DOUBLE"`
	CumulativeEF       float64 `parquet:"name=cumulative_ef_kg_mwh, type=DOUBLE"`
}

// WriteRunsParquet writes the dispatch-run table as a snappy-compressed
// parquet file at path, one row per (run, plant) pair in merit order
// within each run.
func WriteRunsParquet(path string, runs []*meritorder.DispatchRun) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("meritorder: creating snapshot file: %v", err)
	}
	pw, err := writer.NewParquetWriter(fw, new(dispatchRow), 1)
	if err != nil {
		fw.Close()
		return fmt.Errorf("meritorder: creating snapshot writer: %v", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, run := range runs {
		for _, pt := range run.Points {
			row := dispatchRow{
				Run:                int32(run.ID),
				PlantID:            pt.Plant.ID,
				Territory:          pt.Plant.Territory,
				Fuel:               string(pt.Plant.Fuel),
				Cost:               pt.Cost,
				CumulativeCapacity: pt.CumulativeCapacity,
				CumulativeEF:       pt.CumulativeEF,
			}
			if err := pw.Write(row); err != nil {
				pw.WriteStop()
				fw.Close()
				return fmt.Errorf("meritorder: writing snapshot: %v", err)
			}
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("meritorder: finalizing snapshot: %v", err)
	}
	return fw.Close()
}
