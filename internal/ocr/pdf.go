package ocr

import (
	"os"
	"regexp"
	"strconv"

	rpdf "rsc.io/pdf"
)

// PageCount returns the number of pages in the PDF, or 0 when the file
// cannot be parsed (rsc.io/pdf rejects some producers' output).
func PageCount(path string) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return 0
	}
	doc, err := rpdf.NewReader(f, fi.Size())
	if err != nil {
		return 0
	}
	return doc.NumPage()
}

var pageSuffix = regexp.MustCompile(`-(\d+)\.png$`)

// pageFromName parses the page number pdftoppm appends to its output files
// (page-1.png, page-01.png, page-001.png depending on page count).
func pageFromName(name string) int {
	m := pageSuffix.FindStringSubmatch(name)
	if len(m) != 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
