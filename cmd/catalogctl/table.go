package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/user/moovie-semantic/internal/model"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const maxTitleWidth = 40

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    maxTitleWidth,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func yearString(year int) string {
	if year == 0 {
		return "-"
	}
	return strconv.Itoa(year)
}

func renderMovies(movies []model.Movie) string {
	if len(movies) == 0 {
		return "Catalog is empty"
	}
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{
			strconv.Itoa(m.ID),
			strconv.FormatInt(m.TMDBID, 10),
			m.Title,
			yearString(m.ReleaseYear),
			m.Genre,
			fmt.Sprintf("%.1f", m.Rating),
			strconv.Itoa(len(m.Vector())),
		})
	}
	return renderTable(
		[]string{"ID", "TMDB", "Title", "Year", "Genre", "Rating", "Dims"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignLeft, alignRight, alignRight},
	)
}

func renderScored(results []model.ScoredMovie) string {
	if len(results) == 0 {
		return "No matches"
	}
	rows := make([][]string, 0, len(results))
	for i, r := range results {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.4f", r.Similarity),
			r.Movie.Title,
			yearString(r.Movie.ReleaseYear),
			r.Movie.Genre,
		})
	}
	return renderTable(
		[]string{"#", "Score", "Title", "Year", "Genre"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignLeft},
	)
}

func renderSeedResults(results []model.SeedResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "seeded"
		if !r.Success {
			status = "failed"
			if r.MovieID != nil {
				status = "skipped"
			}
		}
		id := "-"
		if r.MovieID != nil {
			id = strconv.Itoa(*r.MovieID)
		}
		msg := ""
		if r.Message != nil {
			msg = *r.Message
		}
		rows = append(rows, []string{strconv.FormatInt(r.TMDBID, 10), r.Title, status, id, msg})
	}
	return renderTable(
		[]string{"TMDB", "Title", "Status", "ID", "Message"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	)
}
