package api

// Transcriber converts one decoded audio file to text. Implementations do
// any expensive setup (model load, client construction) once up front;
// Transcript is then called once per file within a batch run.
type Transcriber interface {
	Transcript(inputFilePath string) (string, error)
}
