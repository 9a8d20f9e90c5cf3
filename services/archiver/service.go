package archiver

import (
	"archive/tar"
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/estafette/estafette-build-push/api"
	"github.com/estafette/estafette-build-push/clients/git"
	"github.com/klauspost/compress/gzip"
	"github.com/opentracing/opentracing-go"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/blake3"
)

const (
	vcsDirectory  = ".git"
	archivePrefix = "build-push-"
	pendingName   = "source.tar.gz.partial"
)

// ArchiveArtifact is a compressed source archive on local disk together with the digests of its bytes
type ArchiveArtifact struct {
	Path         string
	Size         int64
	DigestMD5    string
	DigestSHA256 string
	DigestBLAKE3 string
}

// Checksum returns the strong digest prefixed with its algorithm, the way the build api expects it
func (a ArchiveArtifact) Checksum() string {
	return "SHA256:" + a.DigestSHA256
}

// Remove deletes the archive and its private directory
func (a ArchiveArtifact) Remove() error {
	if a.Path == "" {
		return nil
	}
	return os.RemoveAll(filepath.Dir(a.Path))
}

// Service packages a source tree into a gzipped tarball
//go:generate mockgen -package=archiver -destination ./mock.go -source=service.go
type Service interface {
	Archive(ctx context.Context, root string) (ArchiveArtifact, error)
}

// NewService returns a new Service; gitClient decides which paths are ignored
func NewService(gitClient git.Client) Service {
	return &service{
		gitClient: gitClient,
	}
}

type service struct {
	gitClient git.Client
}

func (s *service) Archive(ctx context.Context, root string) (artifact ArchiveArtifact, err error) {

	span, ctx := opentracing.StartSpanFromContext(ctx, "Archive")
	defer span.Finish()

	directory, err := os.MkdirTemp("", archivePrefix)
	if err != nil {
		return artifact, api.Wrap(api.KindArchival, fmt.Errorf("Creating temporary directory failed: %w", err))
	}
	defer func() {
		if err != nil {
			span.SetTag("error", true)
			os.RemoveAll(directory)
		}
	}()

	file, err := os.OpenFile(filepath.Join(directory, pendingName), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return artifact, api.Wrap(api.KindArchival, fmt.Errorf("Creating archive file failed: %w", err))
	}

	digests := newDigests()

	// the file comes first so a failed disk write stops the bytes before they reach a digest
	err = s.writeArchive(ctx, root, io.MultiWriter(file, digests))
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("Closing archive file failed: %w", closeErr)
	}
	if err != nil {
		return artifact, api.Wrap(api.KindArchival, err)
	}

	artifact = digests.artifact()
	artifact.Path = filepath.Join(directory, artifact.DigestBLAKE3+".tar.gz")
	if err = os.Rename(file.Name(), artifact.Path); err != nil {
		return ArchiveArtifact{}, api.Wrap(api.KindArchival, fmt.Errorf("Renaming archive failed: %w", err))
	}

	span.SetTag("size", artifact.Size)
	log.Debug().Str("path", artifact.Path).Int64("size", artifact.Size).Str("sha256", artifact.DigestSHA256).Msg("Archived source tree")

	return artifact, nil
}

func (s *service) writeArchive(ctx context.Context, root string, w io.Writer) error {

	gzipWriter := gzip.NewWriter(w)
	tarWriter := tar.NewWriter(gzipWriter)

	// one git call up front instead of a check-ignore per walked path
	var ignored map[string]bool
	if s.gitClient.HasRepository() {
		var err error
		ignored, err = s.gitClient.IgnoredPaths(ctx)
		if err != nil {
			return fmt.Errorf("Reading ignore rules failed: %w", err)
		}
	}

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		relativePath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if relativePath == "." {
			return nil
		}

		if entry.Name() == vcsDirectory && entry.IsDir() {
			return filepath.SkipDir
		}

		name := filepath.ToSlash(relativePath)
		if entry.IsDir() && ignored[name+"/"] {
			log.Debug().Msgf("Skipping ignored directory %v", name)
			return filepath.SkipDir
		}
		if ignored[name] {
			log.Debug().Msgf("Skipping ignored path %v", name)
			return nil
		}

		return addEntry(tarWriter, path, name, entry)
	})
	if walkErr != nil {
		return fmt.Errorf("Archiving %v failed: %w", root, walkErr)
	}

	if err := tarWriter.Close(); err != nil {
		return fmt.Errorf("Finishing tar stream failed: %w", err)
	}
	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("Finishing gzip stream failed: %w", err)
	}

	return nil
}

func addEntry(tarWriter *tar.Writer, path, name string, entry fs.DirEntry) error {

	info, err := entry.Info()
	if err != nil {
		return err
	}

	link := ""
	switch {
	case info.Mode().IsRegular(), info.IsDir():
	case info.Mode()&os.ModeSymlink != 0:
		link, err = os.Readlink(path)
		if err != nil {
			return err
		}
	default:
		// sockets, devices and pipes have no place in a source archive
		log.Debug().Msgf("Skipping special file %v", name)
		return nil
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	header.Name = name
	if info.IsDir() {
		header.Name += "/"
	}
	// ownership of the local machine means nothing on the build platform
	header.Uid, header.Gid, header.Uname, header.Gname = 0, 0, "", ""

	if err = tarWriter.WriteHeader(header); err != nil {
		return err
	}

	if !info.Mode().IsRegular() {
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(tarWriter, file)

	return err
}

type digests struct {
	md5    hash.Hash
	sha256 hash.Hash
	blake3 *blake3.Hasher
	size   int64
}

func newDigests() *digests {
	return &digests{
		md5:    md5.New(),
		sha256: sha256.New(),
		blake3: blake3.New(),
	}
}

func (d *digests) Write(p []byte) (int, error) {
	// hash writes never fail
	d.md5.Write(p)
	d.sha256.Write(p)
	d.blake3.Write(p)
	d.size += int64(len(p))
	return len(p), nil
}

func (d *digests) artifact() ArchiveArtifact {
	return ArchiveArtifact{
		Size:         d.size,
		DigestMD5:    hex.EncodeToString(d.md5.Sum(nil)),
		DigestSHA256: hex.EncodeToString(d.sha256.Sum(nil)),
		DigestBLAKE3: hex.EncodeToString(d.blake3.Sum(nil)),
	}
}
