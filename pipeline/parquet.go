package pipeline

import (
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	zonecalc "zone-calc"
)

type lapParquetRow struct {
	Lap      int64   `parquet:"name=lap, type=INT64"`
	ElapsedS float64 `parquet:"name=elapsed_s, type=DOUBLE"`
	HRBPM    float64 `parquet:"name=hr_bpm, type=DOUBLE"`
	RPE      int64   `parquet:"name=rpe, type=INT64"`
	Zone     string  `parquet:"name=zone, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

func writeLapsParquet(path string, records []zonecalc.LapRecord, bands []zonecalc.ZoneBand) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(lapParquetRow), 4)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, r := range records {
		row := lapParquetRow{
			Lap:      int64(r.Lap),
			ElapsedS: r.ElapsedSeconds,
			HRBPM:    r.HeartRate,
			RPE:      int64(r.PerceivedEffort),
			Zone:     zonecalc.ClassifyHeartRate(bands, r.HeartRate),
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}
