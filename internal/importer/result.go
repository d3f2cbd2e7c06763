package importer

// FileResult summarizes one file's import. Counters are returned by value
// and accumulated by the caller; nothing in the pipeline keeps running
// totals across calls.
type FileResult struct {
	GamesImported  int
	DuplicateGames int
	MalformedGames int
	Skipped        bool
}

// FolderResult is the externally observed summary of a folder run.
type FolderResult struct {
	TotalGamesImported int
	FilesProcessed     int
	FilesSkipped       int
	FileErrors         int
	DuplicateGames     int
	MalformedGames     int
}

func (r *FolderResult) add(fr FileResult) {
	if fr.Skipped {
		r.FilesSkipped++
		return
	}
	r.FilesProcessed++
	r.TotalGamesImported += fr.GamesImported
	r.DuplicateGames += fr.DuplicateGames
	r.MalformedGames += fr.MalformedGames
}
