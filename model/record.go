package model

import "time"

// Section is a numbered or lettered structural unit of a standard.
// Number is the canonical heading token ("1", "6.5.2", "A.1", "C.0") and is
// unique within a document. Content has already been cleaned of pagination
// noise and of trailing lines belonging to the next heading.
type Section struct {
	Number  string `json:"numero"`
	Title   string `json:"titulo"`
	Content string `json:"contenido"`
}

// Table is a validated table extracted from one page. Header is the first
// surviving grid row; Rows holds the remaining data rows.
type Table struct {
	ID     string     `json:"id"`
	Page   int        `json:"pagina"`
	Header []string   `json:"cabecera"`
	Rows   [][]string `json:"datos"`
}

// SectionRef points a figure at its structurally closest section. The mapping
// is a page-position heuristic, never layout-derived, so Estimated is always
// true for pipeline-produced values and downstream consumers must not treat
// the reference as authoritative.
type SectionRef struct {
	Number    string `json:"numero"`
	Title     string `json:"titulo"`
	Estimated bool   `json:"estimada"`
}

// Figure is a rendered figure region merged from one or more raster image
// placements on a page. File is the path of the rendered image relative to
// the document's output directory; Data holds the encoded bytes until the
// writer persists them.
type Figure struct {
	ID            string     `json:"id"`
	File          string     `json:"archivo"`
	Page          int        `json:"pagina"`
	BBox          BBox       `json:"bbox"`
	NearbySection SectionRef `json:"seccion_cercana"`
	Format        string     `json:"formato"`
	ByteSize      int        `json:"tamano_bytes"`

	Data []byte `json:"-"`
}

// DocumentRecord is the combined structured record for one processed
// document. It is owned by the pipeline for the duration of one run and
// serialized once; no state survives across documents.
type DocumentRecord struct {
	Code        string    `json:"norma"`
	Title       string    `json:"titulo"`
	SourceFile  string    `json:"archivo_origen"`
	ExtractedAt time.Time `json:"fecha_extraccion"`
	TotalPages  int       `json:"paginas_totales"`
	Sections    []Section `json:"secciones"`
	Tables      []Table   `json:"tablas"`
	Figures     []Figure  `json:"figuras"`
}

// TablesRecord is the smaller artifact produced for table-only consumers.
type TablesRecord struct {
	Code   string  `json:"norma"`
	Tables []Table `json:"tablas"`
}

// TablesOnly derives the table-only artifact from a full record.
func (r *DocumentRecord) TablesOnly() TablesRecord {
	return TablesRecord{Code: r.Code, Tables: r.Tables}
}
